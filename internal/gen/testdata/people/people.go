package people

import (
	tm "time"
)

//ctor(pub new, pub from(into), default(all))
type Person struct {
	Name string
	//ctor(cloned = 0)
	Tags []string
	//ctor(iter(string) = 0)
	Groups map[string]struct{}
	Born   tm.Time
	Age    Years `ctor:"expr(0)"`
}

type Years int

//ctor(prefix = new)
type Pet interface {
	Sound() string
}

type Dog struct {
	Name string
}

func (Dog) Sound() string { return "woof" }

type Fish struct{}

func (*Fish) Sound() string { return "" }

type Code int

func (Code) Sound() string { return "" }
