package models

import "fmt"

type Direction string

const (
	DirectionLike    Direction = "like"
	DirectionDislike Direction = "dislike"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case DirectionLike, DirectionDislike:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown swipe direction %q", s)
}

// Delta is the weight adjustment a swipe in this direction applies.
func (d Direction) Delta() int {
	if d == DirectionLike {
		return 1
	}
	return -1
}

func (d Direction) Opposite() Direction {
	if d == DirectionLike {
		return DirectionDislike
	}
	return DirectionLike
}
