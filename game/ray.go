package game

// Ray is the line of positions leaving a cell in one direction, nearest first,
// cut at the board edge.
type Ray []Position

// directions are the 8 unit steps around a cell.
var directions = [8]Position{
	{1, 1}, {1, 0}, {1, -1}, {0, -1},
	{-1, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

// CastRays returns the ray in every direction from p. It only looks at
// geometry, never at board contents.
func CastRays(p Position) [8]Ray {
	var rays [8]Ray
	for i, d := range directions {
		rays[i] = castRay(p, d)
	}
	return rays
}

func castRay(p Position, d Position) Ray {
	var ray Ray
	for step := 1; step < Size; step++ {
		next := Position{X: p.X + step*d.X, Y: p.Y + step*d.Y}
		if next.InBounds() {
			ray = append(ray, next)
		}
	}
	return ray
}

// captured returns the opponent run that mover brackets along ray, or nil.
// The ray splits into runs of equal occupancy; it captures when there are at
// least two runs, the first is the opponent's and the second is the mover's.
func (b Board) captured(ray Ray, mover Color) []Position {
	opponent, err := Invert(mover)
	if err != nil || len(ray) < 2 || b.at(ray[0]) != opponent {
		return nil
	}
	for i, p := range ray[1:] {
		switch b.at(p) {
		case opponent:
			continue
		case mover:
			return ray[:i+1]
		default:
			return nil
		}
	}
	return nil
}
