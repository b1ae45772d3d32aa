package tracking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/mailtrack/modules/tracking"
)

// layout renders links compactly: "<" prev, ">" next, "…" ellipsis, "[n]" active.
func layout(links []tracking.PageLink) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		var s string
		switch l.Kind {
		case tracking.LinkPrev:
			s = "<"
		case tracking.LinkNext:
			s = ">"
		case tracking.LinkEllipsis:
			s = "…"
		default:
			s = string(rune('0' + l.Page%10))
			if l.Page >= 10 {
				s = string(rune('0'+l.Page/10)) + s
			}
			if l.Active {
				s = "[" + s + "]"
			}
		}
		if l.Disabled && l.Kind != tracking.LinkEllipsis {
			s += "x"
		}
		out = append(out, s)
	}
	return out
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int
		total   int
		want    []string
	}{
		{"single page", 1, 1, nil},
		{"no pages", 1, 0, nil},
		{"first of two", 1, 2, []string{"<x", "[1]", "2", ">"}},
		{"last of two", 2, 2, []string{"<", "1", "[2]", ">x"}},
		{"start of many", 1, 10, []string{"<x", "[1]", "2", "3", "…", "10", ">"}},
		{"fourth of ten", 4, 10, []string{"<", "1", "2", "3", "[4]", "5", "6", "…", "10", ">"}},
		{"fifth of ten", 5, 10, []string{"<", "1", "…", "3", "4", "[5]", "6", "7", "…", "10", ">"}},
		{"near end", 8, 10, []string{"<", "1", "…", "6", "7", "[8]", "9", "10", ">"}},
		{"end of many", 10, 10, []string{"<", "1", "…", "8", "9", "[10]", ">x"}},
		{"window covers all", 3, 5, []string{"<", "1", "2", "[3]", "4", "5", ">"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			links := tracking.Paginate(tt.current, tt.total)
			if tt.want == nil {
				assert.Nil(t, links)
				return
			}
			assert.Equal(t, tt.want, layout(links))
		})
	}
}

func TestPaginate_PrevNextTargets(t *testing.T) {
	t.Parallel()
	links := tracking.Paginate(4, 10)
	assert.Equal(t, 3, links[0].Page)
	assert.Equal(t, 5, links[len(links)-1].Page)
}
