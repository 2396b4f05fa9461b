package lifecycle

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
)

// CodeLength is the number of digits in a confirmation code.
const CodeLength = 6

var codeSpan = big.NewInt(900000)

// CodeGenerator issues the confirmation code handed to a collector on claim.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodeGenerator draws uniformly from 100000..999999.
type RandomCodeGenerator struct{}

// Generate returns a fresh 6 digit code.
func (RandomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpan)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate confirmation code")
	}

	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// StaticCodeGenerator always returns the same code. Useful in tests and simulations.
type StaticCodeGenerator string

// Generate returns the static code.
func (s StaticCodeGenerator) Generate() (string, error) {
	return string(s), nil
}
