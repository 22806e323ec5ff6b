package terrain

import "github.com/maseology/mmaths"

// illumination fraction to 8-bit brightness
func shade(s float64) float64 { return mmaths.LinearTransform(0., 255., s) }
