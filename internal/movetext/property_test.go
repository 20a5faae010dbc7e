package movetext

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/lgbarn/pgn-ingest-go/internal/record"
)

// genSAN generates SAN tokens covering pieces, captures, promotions and checks.
func genSAN() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("", "N", "B", "R", "Q", "K"),
		gen.OneConstOf("", "x"),
		gen.IntRange(0, 7),
		gen.IntRange(0, 7),
		gen.OneConstOf("", "+", "#"),
	).Map(func(v []interface{}) string {
		return fmt.Sprintf("%s%s%c%c%s",
			v[0].(string), v[1].(string), 'a'+v[2].(int), '1'+v[3].(int), v[4].(string))
	})
}

func TestExtractRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("extracted moves equal the moves written", prop.ForAll(
		func(moves []string, result string) bool {
			if len(moves) == 0 {
				return true
			}
			var sb strings.Builder
			for i, m := range moves {
				if i%2 == 0 {
					fmt.Fprintf(&sb, "%d. ", i/2+1)
				}
				sb.WriteString(m)
				sb.WriteByte(' ')
			}
			sb.WriteString(result)

			got, ok := Extract(sb.String())
			if !ok || got.Result != result || got.Indices != (len(moves)+1)/2 {
				return false
			}
			if len(got.Moves) != len(moves) {
				return false
			}
			for i := range moves {
				if got.Moves[i] != moves[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genSAN()),
		gen.OneConstOf(record.WhiteWins, record.BlackWins, record.Draw, record.Unfinished),
	))

	properties.TestingRun(t)
}
