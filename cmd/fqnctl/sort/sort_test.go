package sort

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	tcs := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "tree order",
			input: "/b\n/a/b\n/a\n/a/a\n",
			want:  []string{"/a", "/a/a", "/a/b", "/b"},
		},
		{
			name:  "blank lines skipped",
			input: "\n/b\n   \n/a\n",
			want:  []string{"/a", "/b"},
		},
		{
			name:  "root first",
			input: "/x\n/\n",
			want:  []string{"/", "/x"},
		},
		{
			name:  "equal paths keep input order",
			input: "a/b\n/a/b\n/a/b/\n",
			want:  []string{"a/b", "/a/b", "/a/b/"},
		},
		{
			name:  "empty",
			input: "",
			want:  []string{},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Lines(strings.NewReader(tc.input))
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}
