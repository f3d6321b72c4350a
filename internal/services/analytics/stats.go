package analytics

import (
    "math"
    "sort"
)

// median returns the middle value of vs (mean of the two middles for even
// lengths), or 0 for empty input. vs is not mutated.
func median(vs []float64) float64 {
    n := len(vs)
    if n == 0 {
        return 0
    }
    s := append([]float64(nil), vs...)
    sort.Float64s(s)
    if n%2 == 1 {
        return s[n/2]
    }
    return (s[n/2-1] + s[n/2]) / 2
}

// mad returns the median absolute deviation around center.
func mad(vs []float64, center float64) float64 {
    if len(vs) == 0 {
        return 0
    }
    devs := make([]float64, 0, len(vs))
    for _, v := range vs {
        devs = append(devs, math.Abs(v-center))
    }
    return median(devs)
}

// quartiles returns Q1 and Q3 via linear interpolation between closest ranks.
func quartiles(vs []float64) (q1, q3 float64) {
    n := len(vs)
    if n == 0 {
        return 0, 0
    }
    s := append([]float64(nil), vs...)
    sort.Float64s(s)
    return quantileSorted(s, 0.25), quantileSorted(s, 0.75)
}

func quantileSorted(s []float64, q float64) float64 {
    n := len(s)
    if n == 1 {
        return s[0]
    }
    pos := q * float64(n-1)
    lo := int(math.Floor(pos))
    hi := int(math.Ceil(pos))
    if lo == hi {
        return s[lo]
    }
    frac := pos - float64(lo)
    return s[lo]*(1-frac) + s[hi]*frac
}

// meanStdDev computes the population mean and standard deviation.
// Returns (0, 0) for empty input.
func meanStdDev(vs []float64) (mean, stddev float64) {
    n := len(vs)
    if n == 0 {
        return 0, 0
    }
    var sum float64
    for _, v := range vs {
        sum += v
    }
    mean = sum / float64(n)
    var sumSq float64
    for _, v := range vs {
        d := v - mean
        sumSq += d * d
    }
    stddev = math.Sqrt(sumSq / float64(n))
    return mean, stddev
}

func clampF(v, lo, hi float64) float64 {
    if v < lo {
        return lo
    }
    if v > hi {
        return hi
    }
    return v
}

func clampI(v, lo, hi int) int {
    if v < lo {
        return lo
    }
    if v > hi {
        return hi
    }
    return v
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
    return math.Round(v*10) / 10
}
