package blend

// Names of the built-in modes.
const (
	Normal     = "normal"
	Multiply   = "multiply"
	Screen     = "screen"
	Overlay    = "overlay"
	Difference = "difference"
	Addition   = "addition"
	Exclusion  = "exclusion"
	SoftLight  = "softLight"
	Lighten    = "lighten"
	Darken     = "darken"
)

var builtins = map[string]Func{
	Normal:     normal,
	Multiply:   perChannel(multiply),
	Screen:     perChannel(screen),
	Overlay:    perChannel(overlay),
	Difference: perChannel(difference),
	Addition:   perChannel(addition),
	Exclusion:  perChannel(exclusion),
	SoftLight:  perChannel(softLight),
	Lighten:    perChannel(lighten),
	Darken:     perChannel(darken),
}

// perChannel lifts a separable channel function B(layer, parent) to a Func.
// Alpha is left unset so the layer's own alpha acts as the mask.
func perChannel(fn func(l, p float64) float64) Func {
	return func(layer, parent Pixel) Result {
		return RGB(
			fn(float64(layer.R), float64(parent.R)),
			fn(float64(layer.G), float64(parent.G)),
			fn(float64(layer.B), float64(parent.B)),
		)
	}
}

func normal(layer, _ Pixel) Result {
	return RGB(float64(layer.R), float64(layer.G), float64(layer.B))
}

func multiply(l, p float64) float64 {
	return l * p / 255
}

func screen(l, p float64) float64 {
	return 255 - (255-l)*(255-p)/255
}

func overlay(l, p float64) float64 {
	if p > 128 {
		return 255 - 2*(255-l)*(255-p)/255
	}
	return p * l * 2 / 255
}

// difference may go negative.
func difference(l, p float64) float64 {
	return l - p
}

// addition may exceed 255.
func addition(l, p float64) float64 {
	return p + l
}

func exclusion(l, p float64) float64 {
	return 128 - 2*(p-128)*(l-128)/255
}

func softLight(l, p float64) float64 {
	if p > 128 {
		return 255 - (255-p)*(255-(l-128))/255
	}
	return p * (l + 128) / 255
}

func lighten(l, p float64) float64 {
	if p > l {
		return p
	}
	return l
}

func darken(l, p float64) float64 {
	if p > l {
		return l
	}
	return p
}
