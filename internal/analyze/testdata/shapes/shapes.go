package shapes

//ctor(prefix = new)
type Shape interface {
	Area() float64
}

type Circle struct {
	Radius float64
}

func (c Circle) Area() float64 { return 3 * c.Radius * c.Radius }

type Square struct {
	Side float64
}

func (s *Square) Area() float64 { return s.Side * s.Side }

type Point struct{}

func (Point) Area() float64 { return 0 }

//ctor(none)
type Hidden struct{}

func (Hidden) Area() float64 { return 0 }

type Meters float64

func (m Meters) Area() float64 { return float64(m) }

type Feet float64

func (f *Feet) Area() float64 { return float64(*f) }

type Other struct{}

type Box[T any] struct {
	V T
}

func (Box[T]) Area() float64 { return 0 }

//ctor
type Ordered interface {
	~int | ~string
}

//ctor
type Container[T any] interface {
	Get() T
}

//ctor
type Empty interface{}
