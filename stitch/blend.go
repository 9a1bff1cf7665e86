package stitch

// blendRow alpha-feathers one RGBA row: out = rowP*(1-alpha) + rowN*alpha,
// rounded per channel, clamped to [0, 255], alpha channel forced opaque.
// Slices hold w packed RGBA pixels; dst may alias rowP.
func blendRow(dst, rowP, rowN []uint8, alpha float64, w int) {
	inv := 1 - alpha
	for x := 0; x < w; x++ {
		i := x * 4
		for c := 0; c < 3; c++ {
			v := float64(rowP[i+c])*inv + float64(rowN[i+c])*alpha
			p := int(v + 0.5)
			if p > 255 {
				p = 255
			} else if p < 0 {
				p = 0
			}
			dst[i+c] = uint8(p)
		}
		dst[i+3] = 0xff
	}
}
