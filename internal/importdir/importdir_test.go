package importdir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestScan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   []Spec
	}{
		{
			name:   "no directives",
			source: `fragment MenuShort on StorefrontMenu { id name }`,
			want:   nil,
		},
		{
			name:   "star import",
			source: `import * from "@shared/fragments"` + "\nquery GetMenu { id }",
			want:   []Spec{{From: "@shared/fragments", What: What{All: true}}},
		},
		{
			name:   "named import",
			source: `import { A, B, C } from "../common"`,
			want:   []Spec{{From: "../common", What: What{Names: []string{"A", "B", "C"}}}},
		},
		{
			name: "multiple directives preserve source order",
			source: `import { A } from "../common"
import * from "@shared/fragments"
import { B } from "../other"`,
			want: []Spec{
				{From: "../common", What: What{Names: []string{"A"}}},
				{From: "@shared/fragments", What: What{All: true}},
				{From: "../other", What: What{Names: []string{"B"}}},
			},
		},
		{
			name:   "malformed directive is silently ignored",
			source: `import {} from "../common"`,
			want:   nil,
		},
		{
			name:   "flexible whitespace",
			source: `import   {   A  ,B,   C } from    "../common"`,
			want:   []Spec{{From: "../common", What: What{Names: []string{"A", "B", "C"}}}},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Scan(tt.source)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scan() diff(-want +got):\n%s", diff)
			}
		})
	}
}
