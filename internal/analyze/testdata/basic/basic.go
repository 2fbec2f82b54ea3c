package basic

import (
	"strings"
	tm "time"
)

var _ = NewUser

// User is a regular annotated struct.
//
//ctor
type User struct {
	Name string
	//ctor(cloned)
	Tags    []string
	Age     int `json:"age" ctor:"default"`
	Created tm.Time
	_       struct{}
	noCopy  noCopy
	Set     map[string]struct{}
	Index   map[string]int
	Builder strings.Builder
	ID      ID
	Doc     Doc //ctor(cloned)
	Anchor  [0]int
	Any     any
}

type ID string

type noCopy struct{}

// Doc can copy itself.
type Doc struct {
	Lines []string
}

func (d *Doc) Clone() Doc {
	return Doc{Lines: append([]string(nil), d.Lines...)}
}

//ctor(pub new)
type Pair[K comparable, V any] struct {
	Key K
	Val V
}

type Plain struct {
	X int
}

//ctor
type Number int

//ctor(nwe
type Broken struct{}
