// Package fixtures generates the random data used to create test resources. Values are long
// enough that two runs against the same service are very unlikely to collide on a login.
package fixtures

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"

	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	lowerAlphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"
	alphanumeric      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ" + lowerAlphanumeric
	letters           = "abcdefghijklmnopqrstuvwxyz"

	MinLength = 6
	MaxLength = 20
)

type fieldSpec struct {
	alphabet  string
	minLength int
	maxLength int
}

var (
	loginSpec     = fieldSpec{alphabet: lowerAlphanumeric, minLength: 12, maxLength: MaxLength}
	passwordSpec  = fieldSpec{alphabet: alphanumeric, minLength: 10, maxLength: MaxLength}
	firstNameSpec = fieldSpec{alphabet: letters, minLength: MinLength, maxLength: 12}
)

// Generator produces random courier and order data. It is safe for concurrent use.
//
// A Generator created with NewGenerator is seeded unpredictably; one created with
// NewSeededGenerator produces the same sequence every time, for reproducing a run.
type Generator struct {
	seed int64
	rng  *rand.Rand
	last map[*fieldSpec]string
	lock sync.Mutex
}

func NewGenerator() *Generator {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(err)
	}
	return NewSeededGenerator(int64(binary.LittleEndian.Uint64(b[:])))
}

func NewSeededGenerator(seed int64) *Generator {
	return &Generator{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec
		last: make(map[*fieldSpec]string),
	}
}

// Seed returns the seed that this generator's sequence was derived from.
func (g *Generator) Seed() int64 {
	return g.seed
}

func (g *Generator) Login() string     { return g.next(&loginSpec) }
func (g *Generator) Password() string  { return g.next(&passwordSpec) }
func (g *Generator) FirstName() string { return g.next(&firstNameSpec) }

// Courier returns parameters for a new account with all fields set.
func (g *Generator) Courier() servicedef.CourierParams {
	return servicedef.CourierParams{
		Login:     ldvalue.NewOptionalString(g.Login()),
		Password:  ldvalue.NewOptionalString(g.Password()),
		FirstName: ldvalue.NewOptionalString(g.FirstName()),
	}
}

// Order returns a valid order with the given colour preference. An empty colour list is sent
// as [] rather than null.
func (g *Generator) Order(colors ...servicedef.Color) servicedef.OrderParams {
	return servicedef.OrderParams{
		FirstName:    "Naruto",
		LastName:     "Uchiha",
		Address:      "Konoha, 142 apt.",
		MetroStation: 4,
		Phone:        "+7 800 355 35 35",
		RentTime:     5,
		DeliveryDate: "2020-06-06",
		Comment:      "Saske, come back to Konoha",
		Color:        append([]servicedef.Color{}, colors...),
	}
}

func (g *Generator) next(spec *fieldSpec) string {
	g.lock.Lock()
	defer g.lock.Unlock()
	for {
		s := g.randomString(spec)
		if s != g.last[spec] {
			g.last[spec] = s
			return s
		}
	}
}

func (g *Generator) randomString(spec *fieldSpec) string {
	length := spec.minLength + g.rng.Intn(spec.maxLength-spec.minLength+1)
	b := make([]byte, length)
	for i := range b {
		b[i] = spec.alphabet[g.rng.Intn(len(spec.alphabet))]
	}
	return string(b)
}
