package habit

import (
	"fmt"

	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habitica"
)

// StatChange describes how scoring moved the user's stats, one line per
// notable change. Only level ups, HP loss, XP and GP gains, and drops are
// reported.
func StatChange(old task.Stats, res habitica.ScoreResult) []string {
	var lines []string

	if res.Lvl > old.Lvl {
		lines = append(lines, fmt.Sprintf("LEVEL UP! Say hello to level %d", res.Lvl))
	}
	if res.HP < old.HP {
		lines = append(lines, fmt.Sprintf("%0.1f HP!", res.HP-old.HP))
	}
	if res.Exp > old.Exp {
		lines = append(lines, fmt.Sprintf("%d XP!", int(res.Exp-old.Exp)))
	}
	if res.GP > old.GP {
		lines = append(lines, fmt.Sprintf("%0.1f GP!", res.GP-old.GP))
	}
	if drop := res.Drop(); drop != nil {
		lines = append(lines, fmt.Sprintf("%s %s dropped!", drop.Key, drop.Type))
	}

	return lines
}
