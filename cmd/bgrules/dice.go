package main

import (
	"codeberg.org/tslocum/bgrules"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type DiceCmd struct {
	Rolls int    `short:"n" default:"10000000" help:"Pairs of dice to roll"`
	Seed  *int64 `help:"Roll with a seeded generator instead of crypto/rand"`
}

func (c *DiceCmd) Run() error {
	var roller bgrules.Roller = bgrules.CryptoRoller{}
	if c.Seed != nil {
		roller = bgrules.NewSeededRoller(*c.Seed)
	}
	printRollStatistics(roller, c.Rolls)
	return nil
}

func printRollStatistics(roller bgrules.Roller, total int) {
	var oneSame, doubles int
	var lastroll1, lastroll2 int
	var rolls [6]int

	for i := 0; i < total; i++ {
		roll1 := roller.Roll()
		roll2 := roller.Roll()

		rolls[roll1-1]++
		rolls[roll2-1]++

		if roll1 == lastroll1 || roll1 == lastroll2 || roll2 == lastroll1 || roll2 == lastroll2 {
			oneSame++
		}

		if roll1 == roll2 {
			doubles++
		}

		lastroll1, lastroll2 = roll1, roll2
	}

	percent := func(n, of int) float64 {
		if of == 0 {
			return 0
		}
		return float64(n) / float64(of) * 100
	}
	p := message.NewPrinter(language.English)
	p.Printf("Rolled %d pairs of dice.\nDoubles: %d (%.0f%%). One same as last: %d (%.0f%%).\n", total, doubles, percent(doubles, total), oneSame, percent(oneSame, total))
	for i, n := range rolls {
		p.Printf("%ds: %d (%.1f%%)\n", i+1, n, percent(n, total*2))
	}
}
