package engine

import "fmt"

const battleStartedLine = "Battle started!"

func basicAttackLine(damage, combo int) string {
	return fmt.Sprintf("⚔️ Basic attack! Damage: %d (Combo x%d)", damage, combo)
}

func techniqueLine(info TechniqueInfo, damage, combo int) string {
	return fmt.Sprintf("%s %s! Damage: %d! (Combo x%d)", info.Icon, info.Name, damage, combo)
}

func opponentAttackLine(name string, damage int) string {
	return fmt.Sprintf("👹 %s attacks! Damage: %d", name, damage)
}

func victoryLine(name string) string {
	return fmt.Sprintf("🎉 Victory! %s is defeated!", name)
}

const defeatLine = "💀 Defeat..."
