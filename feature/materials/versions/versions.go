package versions

import (
	"sort"

	"material-manager/core/errs"
	"material-manager/feature/materials/models"
)

// Latest returns the position and a pointer into versions of the latest
// version: the greatest fecha_actualizacion (or fecha_subida when unset).
// On equal timestamps the higher secuencia wins when both carry one;
// otherwise the first listed wins.
func Latest(versions []models.MaterialVersion) (int, *models.MaterialVersion, error) {
	if len(versions) == 0 {
		return -1, nil, errs.ErrNoVersion
	}

	best := 0
	bestT := versions[0].EffectiveTime()
	for i := 1; i < len(versions); i++ {
		t := versions[i].EffectiveTime()
		switch {
		case t.After(bestT):
		case t.Equal(bestT) && newerSequence(&versions[i], &versions[best]):
		default:
			continue
		}
		best, bestT = i, t
	}
	return best, &versions[best], nil
}

func newerSequence(v, than *models.MaterialVersion) bool {
	return v.Secuencia != 0 && than.Secuencia != 0 && v.Secuencia > than.Secuencia
}

// ReplaceLatest returns a new history: updated first, then every version
// except the one Latest selects. The count never changes.
func ReplaceLatest(versions []models.MaterialVersion, updated models.MaterialVersion) ([]models.MaterialVersion, error) {
	idx, _, err := Latest(versions)
	if err != nil {
		return nil, err
	}

	out := make([]models.MaterialVersion, 0, len(versions))
	out = append(out, updated)
	for i := range versions {
		if i != idx {
			out = append(out, versions[i])
		}
	}
	return out, nil
}

// Append returns a new history with v prepended. v gets the next secuencia.
func Append(versions []models.MaterialVersion, v models.MaterialVersion) []models.MaterialVersion {
	next := 0
	for i := range versions {
		next = max(next, versions[i].Secuencia)
	}
	v.Secuencia = next + 1

	out := make([]models.MaterialVersion, 0, len(versions)+1)
	out = append(out, v)
	return append(out, versions...)
}

// NewestFirst returns a copy of the history ordered by effective time,
// newest first, with the latest always in front.
func NewestFirst(versions []models.MaterialVersion) []models.MaterialVersion {
	if len(versions) == 0 {
		return []models.MaterialVersion{}
	}
	idx, _, _ := Latest(versions)

	out := make([]models.MaterialVersion, 0, len(versions))
	out = append(out, versions[idx])
	for i := range versions {
		if i != idx {
			out = append(out, versions[i])
		}
	}
	rest := out[1:]
	sort.SliceStable(rest, func(a, b int) bool {
		return rest[a].EffectiveTime().After(rest[b].EffectiveTime())
	})
	return out
}
