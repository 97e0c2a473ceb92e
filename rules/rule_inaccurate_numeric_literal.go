package rules

import (
	"math/big"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/JA3G3R/lintzard/types"
)

// inaccurateNumericLiteral flags number literals that a double cannot hold
// with the digits written, so the value at run time differs from the text.
type inaccurateNumericLiteral struct{ base }

func newInaccurateNumericLiteral(desc types.RuleDescriptor, _ Options) (Rule, error) {
	return &inaccurateNumericLiteral{base{desc}}, nil
}

func (r *inaccurateNumericLiteral) Check(unit *types.SourceUnit) []types.Finding {
	var out []types.Finding
	inspect(unit.Root(), func(n *sitter.Node) bool {
		if n.Type() != "number" {
			return true
		}
		text := unit.Text(n)
		if !accurateNumber(text) {
			out = append(out, r.findingf(unit, n, "numeric literal %s cannot be represented exactly", text))
		}
		return false
	})
	return out
}

// accurateNumber reports whether the double nearest to literal reproduces
// every significant digit written.
func accurateNumber(literal string) bool {
	text := strings.ReplaceAll(literal, "_", "")
	lower := strings.ToLower(text)
	if strings.HasSuffix(lower, "n") {
		// BigInt literals are exact.
		return true
	}
	if radixInteger(lower) {
		i, ok := new(big.Int).SetString(lower, 0)
		if !ok {
			return true
		}
		_, acc := new(big.Float).SetInt(i).Float64()
		return acc == big.Exact
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return false
	}
	digits := significant(lower)
	if digits == "" {
		return true
	}
	formatted := strconv.FormatFloat(f, 'e', len(digits)-1, 64)
	mantissa, _, _ := strings.Cut(formatted, "e")
	return strings.ReplaceAll(mantissa, ".", "") == digits
}

// radixInteger reports hex, octal and binary integer literals, including
// legacy octal such as 0777.
func radixInteger(s string) bool {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0o") || strings.HasPrefix(s, "0b") {
		return true
	}
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '7' {
			return false
		}
	}
	return true
}

// significant returns the digits of a decimal literal without leading or
// trailing zeros.
func significant(s string) string {
	mantissa, _, _ := strings.Cut(s, "e")
	mantissa = strings.ReplaceAll(mantissa, ".", "")
	return strings.TrimRight(strings.TrimLeft(mantissa, "0"), "0")
}
