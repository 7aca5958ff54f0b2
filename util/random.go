package util

import (
	"math/rand"
	"strings"
	"time"

	"github.com/banachtech/painted-wolf/payoff"
)

const alphabet = "abcdefghijklmnopqrstuvwxyz"

func init() {
	rand.Seed(time.Now().UnixNano())
}

// RandomInt generates a random integer between min and max
func RandomInt(min, max int32) int32 {
	return min + rand.Int31n(max-min+1)
}

// RandomString generates a random string of length n
func RandomString(n int) string {
	var sb strings.Builder
	k := len(alphabet)

	for i := 0; i < n; i++ {
		c := alphabet[rand.Intn(k)]
		sb.WriteByte(c)
	}

	return sb.String()
}

// RandomKind picks a call or a put
func RandomKind() payoff.Kind {
	if rand.Intn(2) == 0 {
		return payoff.Call
	}
	return payoff.Put
}

func RandomFloats() float64 {
	return rand.Float64()
}
