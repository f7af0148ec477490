// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package grade maps a score over a total onto a tiered, human-readable message.

Both mini-games (quiz and spelling) end with an encouraging message whose wording
depends on the fraction of correct answers. Each game supplies its own tiers.

Thresholds are compared with integer arithmetic (score*100 >= percent*total), so
3/4 reaches a 75% tier exactly and no float rounding is involved.
*/
package grade

// Tier is a message that applies when the score reaches MinPercent of the total.
type Tier struct {
	MinPercent int
	Message    string
}

// Scale is an ordered list of tiers, highest threshold first.
// The last tier should have MinPercent 0 so that every score resolves.
type Scale []Tier

// Message returns the message of the first tier reached by score out of total.
// A non-positive total resolves to the last tier.
func (s Scale) Message(score, total int) string {
	if len(s) == 0 {
		return ""
	}

	if total <= 0 {
		return s[len(s)-1].Message
	}

	for _, tier := range s {
		if score*100 >= tier.MinPercent*total {
			return tier.Message
		}
	}

	return s[len(s)-1].Message
}

// Percent returns score/total as a whole percentage rounded down.
func Percent(score, total int) int {
	if total <= 0 {
		return 0
	}
	return score * 100 / total
}
