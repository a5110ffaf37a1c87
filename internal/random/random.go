package random

import (
	"crypto/rand"
	"github.com/myrjola/detectivequest/internal/errors"
	"math/big"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns n random ASCII letters, e.g., for naming throwaway in-memory databases.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	upper := big.NewInt(int64(len(allowedLetters)))
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, upper)
		if err != nil {
			return "", errors.Wrap(err, "draw random letter")
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}
