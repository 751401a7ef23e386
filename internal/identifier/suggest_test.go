package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggest(t *testing.T) {
	codec := newTestCodec()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"already valid", "gem.ruby", "gem.ruby", true},
		{"typo in creature", "monster.celestal.eye", "monster.celestial.eye", true},
		{"typo in type", "monstr.fiend.horn", "monster.fiend.horn", true},
		{"typo in part keeps wildcard", "monster.*.clwas", "monster.*.claws", true},
		{"typo in gem", "gem.saphire", "gem.sapphire", true},
		{"too far", "gem.granite", "", false},
		{"missing segment", "monster.fiend", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := codec.Suggest(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
