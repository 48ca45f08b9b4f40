package orchestra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTasks_AssignsDenseIDs(t *testing.T) {
	tasks := NewTasks([]string{"a", "b", "c"})

	require.Equal(t, []Task[string]{
		{ID: 0, Params: "a"},
		{ID: 1, Params: "b"},
		{ID: 2, Params: "c"},
	}, tasks)

	require.Empty(t, NewTasks[string](nil))
}

func TestValidateTasks(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []Task[int]
		wantErr bool
	}{
		{name: "empty", tasks: nil},
		{name: "dense", tasks: NewTasks([]int{1, 2, 3})},
		{name: "sparse unique", tasks: []Task[int]{{ID: 9}, {ID: 4}}},
		{name: "duplicate", tasks: []Task[int]{{ID: 4}, {ID: 9}, {ID: 4}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTasks(tt.tasks)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestState_String(t *testing.T) {
	names := map[State]string{
		Dispatching:  "dispatching",
		Draining:     "draining",
		AllIdleEmpty: "all-idle-empty",
		Terminating:  "terminating",
		Joined:       "joined",
		Sorted:       "sorted",
		Failed:       "failed",
		State(99):    "unknown",
	}
	for s, want := range names {
		require.Equal(t, want, s.String())
	}

	require.True(t, Sorted.Terminal())
	require.True(t, Failed.Terminal())
	require.False(t, Draining.Terminal())
}
