package mesh

import "github.com/chewxy/math32"

type vec3 = [3]float32

func add(a, b vec3) vec3 {
	return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub(a, b vec3) vec3 {
	return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func mul(a, b vec3) vec3 {
	return vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func scale(a vec3, s float32) vec3 {
	return vec3{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func length(a vec3) float32 {
	return math32.Sqrt(dot(a, a))
}

func normalize(a vec3) vec3 {
	l := length(a)
	if l == 0 {
		return vec3{}
	}
	return scale(a, 1/l)
}

// faceNormal returns the unit normal of the counter-clockwise triangle abc.
func faceNormal(a, b, c vec3) vec3 {
	return normalize(cross(sub(b, a), sub(c, a)))
}
