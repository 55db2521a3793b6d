package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/speps/go-hashids/v2"
)

// ReferenceGenerator produces opaque, non-guessable payment references.
// References encode the issue time plus a random nonce through hashids so
// they are URL-safe and cannot collide within a millisecond window.
type ReferenceGenerator struct {
	hash *hashids.HashID
}

func NewReferenceGenerator(salt string) (*ReferenceGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 16

	hash, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("unable to initialise reference generator: %w", err)
	}

	return &ReferenceGenerator{hash: hash}, nil
}

func (r *ReferenceGenerator) PaymentReference() (string, error) {
	now := time.Now().UnixMilli()
	nonce := rand.Int63n(1 << 30)

	encoded, err := r.hash.EncodeInt64([]int64{now, nonce})
	if err != nil {
		return "", fmt.Errorf("unable to encode reference: %w", err)
	}

	return fmt.Sprintf("CHV-%s", encoded), nil
}
