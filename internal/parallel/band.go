package parallel

// Band is a half-open range of rows [Y0, Y1).
type Band struct {
	Y0, Y1 int
}

// Bands splits height rows into at most n contiguous bands of near-equal
// size. It returns nil when height is not positive.
func Bands(height, n int) []Band {
	if height <= 0 {
		return nil
	}
	if n < 1 {
		n = 1
	}
	if n > height {
		n = height
	}

	bands := make([]Band, 0, n)
	base, extra := height/n, height%n
	y := 0
	for i := range n {
		h := base
		if i < extra {
			h++
		}
		bands = append(bands, Band{Y0: y, Y1: y + h})
		y += h
	}
	return bands
}

// ForEachBand calls fn once per band of height rows and returns when all
// calls have finished. With a nil pool, or a pool of one worker, bands run
// in order on the calling goroutine.
//
// fn must only touch rows inside its band.
func ForEachBand(p *WorkerPool, height int, fn func(b Band)) {
	if p == nil || p.Workers() < 2 {
		for _, b := range Bands(height, 1) {
			fn(b)
		}
		return
	}

	bands := Bands(height, p.Workers())
	work := make([]func(), len(bands))
	for i, b := range bands {
		work[i] = func() { fn(b) }
	}
	p.ExecuteAll(work)
}
