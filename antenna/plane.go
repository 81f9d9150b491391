package antenna

// Plane is the cut-plane a set of samples was measured on
type Plane int

const (
	Horizontal Plane = iota
	Vertical
)

var Planes = [...]string{
	"horizontal",
	"vertical",
}

func (p Plane) String() string {
	if int(p) < 0 || int(p) >= len(Planes) {
		return "Unknown-Plane"
	}
	return Planes[p]
}
