package indicator

// Indicator is a color settable light device. Commands are fire-and-forget:
// there is no feedback channel from the device, an implementation either
// applies the command or returns an error.
//
// Implementations live in the sub-packages of this package and are selected
// and held by facade.Facade, which also covers the case of no device being
// attached at all.
type Indicator interface {
	SetColor(Color) error
	Off() error

	GetType() Type
}
