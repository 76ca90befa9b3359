package motion

import "time"

// Entrance timings used by the page sections

// ProjectCardReveal staggers gallery cards across a three-column row
func ProjectCardReveal(idx int) RevealOptions {
	return RevealOptions{
		Effect:    EffectScale,
		Delay:     time.Duration(idx%3) * 150 * time.Millisecond,
		Threshold: 0.05,
	}
}

// SkillCardReveal delays each skill category card by 100ms
func SkillCardReveal(idx int) RevealOptions {
	return RevealOptions{Delay: time.Duration(idx) * 100 * time.Millisecond}
}

// TechChipReveal ripples the skills section's tech chips in 20ms steps
func TechChipReveal(idx int) RevealOptions {
	return RevealOptions{Delay: time.Duration(idx) * 20 * time.Millisecond}
}

// ContactItemReveal brings contact rows in after the heading copy
func ContactItemReveal(idx int) RevealOptions {
	return RevealOptions{Delay: 400*time.Millisecond + time.Duration(idx)*100*time.Millisecond}
}

// Resolved returns the options with every default applied
func (o RevealOptions) Resolved() RevealOptions {
	return o.withDefaults()
}
