package career

import "math/rand/v2"

// experienceTracks labels synthetic profiles by experience threshold. The
// labels are a heuristic prior, not observed career outcomes.
var experienceTracks = []struct {
	below float64
	roles []string
}{
	{below: 2, roles: []string{"junior developer", "full stack developer"}},
	{below: 5, roles: []string{"senior developer", "full stack developer", "data scientist"}},
	{below: 8, roles: []string{"tech lead", "senior developer", "ml engineer"}},
	{below: 0, roles: []string{"engineering manager", "tech lead", "architect"}},
}

// SyntheticProfiles draws n labeled training profiles from rng.
func SyntheticProfiles(n int, rng *rand.Rand) ([]Features, []string) {
	features := make([]Features, 0, n)
	labels := make([]string, 0, n)

	for i := 0; i < n; i++ {
		f := Features{
			ExperienceYears:  rng.Float64() * 15,
			SkillCount:       3 + rng.IntN(12),
			HasDegree:        rng.Float64() < 0.8,
			HasCertification: rng.Float64() < 0.4,
		}

		track := experienceTracks[len(experienceTracks)-1].roles
		for _, t := range experienceTracks[:len(experienceTracks)-1] {
			if f.ExperienceYears < t.below {
				track = t.roles
				break
			}
		}

		features = append(features, f)
		labels = append(labels, track[rng.IntN(len(track))])
	}

	return features, labels
}
