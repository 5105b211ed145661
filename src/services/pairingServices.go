package services

import (
	"sort"

	"github.com/DiffusedRelics/Relics-Backend/src/dtos"
	"github.com/DiffusedRelics/Relics-Backend/src/models"
)

type pairKey struct {
	low  int
	high int
}

// BuildPairedInterpolations derives the grouped slider view from the full
// interpolation set. Only interpolations with exactly two sources take part;
// they are grouped by unordered artifact pair, each gets a position expressed
// as the percentage of the way from the lower-ID artifact toward the
// higher-ID one, and each group is sorted left to right. Groups whose
// artifacts can no longer be resolved are skipped.
//
// The function is pure: it reads the passed slice and lookup and touches no
// other state.
func BuildPairedInterpolations(interpolations []models.InterpolationModel, lookup func(artifactID int) *models.ArtifactModel) []dtos.ArtifactPairDTO {
	groups := make(map[pairKey][]dtos.PositionedInterpolationDTO)

	for i := range interpolations {
		interpolation := &interpolations[i]
		sources, err := interpolation.Sources()
		if err != nil || len(sources) != 2 {
			continue
		}

		key := pairKey{low: sources[0].ArtifactID, high: sources[1].ArtifactID}
		weightLow, weightHigh := sources[0].Weight, sources[1].Weight
		if key.low > key.high {
			key.low, key.high = key.high, key.low
			weightLow, weightHigh = weightHigh, weightLow
		}

		positioned := dtos.PositionedInterpolationDTO{
			ID:         interpolation.ID,
			ImagePath:  interpolation.ImagePath,
			Model:      interpolation.Model,
			WeightLow:  weightLow,
			WeightHigh: weightHigh,
			Position:   position(weightLow, weightHigh),
		}
		groups[key] = append(groups[key], positioned)
	}

	keys := make([]pairKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].low != keys[j].low {
			return keys[i].low < keys[j].low
		}
		return keys[i].high < keys[j].high
	})

	pairs := make([]dtos.ArtifactPairDTO, 0, len(keys))
	for _, key := range keys {
		artifactLow := lookup(key.low)
		artifactHigh := lookup(key.high)
		if artifactLow == nil || artifactHigh == nil {
			// dangling reference, drop the whole group
			continue
		}

		entries := groups[key]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Position < entries[j].Position
		})

		pairs = append(pairs, dtos.ArtifactPairDTO{
			ArtifactLow:    dtos.NewArtifactViewDTO(*artifactLow),
			ArtifactHigh:   dtos.NewArtifactViewDTO(*artifactHigh),
			Interpolations: entries,
		})
	}
	return pairs
}

// position places an interpolation between its pair: 0 sits fully at the
// lower-ID artifact, 100 fully at the higher-ID one. Creation rejects
// zero-sum weights, so a zero total can only come from pre-validation rows;
// those land on the midpoint.
func position(weightLow, weightHigh float64) float64 {
	total := weightLow + weightHigh
	if total == 0 {
		return 50
	}
	return weightHigh / total * 100
}
