package models

import "strings"

// PreferenceProfile is captured at onboarding. Tags are matched lower-cased.
type PreferenceProfile struct {
	Likes    []string `json:"likes"`
	Dislikes []string `json:"dislikes"`
	Gender   string   `json:"gender,omitempty" validate:"in:male,female,unisex,other"`
	Size     string   `json:"size,omitempty" validate:"maxLen:16"`
}

// Normalize lower-cases and trims every tag, dropping blanks.
// Gender is lower-cased too; size is only trimmed.
func (p *PreferenceProfile) Normalize() {
	p.Likes = normalizeTags(p.Likes)
	p.Dislikes = normalizeTags(p.Dislikes)
	p.Gender = strings.ToLower(strings.TrimSpace(p.Gender))
	p.Size = strings.TrimSpace(p.Size)
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		// Repeats are kept: every occurrence of a tag scores.
		out = append(out, tag)
	}
	return out
}

func (p *PreferenceProfile) Clone() *PreferenceProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Likes = append([]string(nil), p.Likes...)
	c.Dislikes = append([]string(nil), p.Dislikes...)
	return &c
}
