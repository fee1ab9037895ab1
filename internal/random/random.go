package random

import (
	"crypto/rand"
	"github.com/OPSAF/Anime/internal/errors"
	"log/slog"
	"math/big"
)

var allowedLetters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")

// Letters returns n random ASCII letters.
func Letters(n uint) (string, error) {
	letters := make([]rune, n)
	for i := range letters {
		letterIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(allowedLetters))))
		if err != nil {
			return "", errors.Wrap(err, "read random letter")
		}
		letters[i] = allowedLetters[letterIndex.Int64()]
	}
	return string(letters), nil
}

// Intn returns a uniformly distributed integer in [0, n).
func Intn(n int) (int, error) {
	if n <= 0 {
		return 0, errors.New("n must be positive", slog.Int("n", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.Wrap(err, "read random int")
	}
	return int(v.Int64()), nil
}

// Picker adapts Intn to the func(int) int shape used by game engines. A failing entropy source falls
// back to the first index.
func Picker(n int) int {
	i, err := Intn(n)
	if err != nil {
		return 0
	}
	return i
}
