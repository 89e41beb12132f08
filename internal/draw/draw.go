package draw

import "strconv"

// Source table header labels, preserved verbatim as row keys.
const (
	KeyNumber     = "Concurso"
	KeyLocation   = "Local"
	KeyDate       = "Data do Sorteio"
	KeyNumber1    = "Coluna 1"
	KeyNumber2    = "Coluna 2"
	KeyNumber3    = "Coluna 3"
	KeyNumber4    = "Coluna 4"
	KeyNumber5    = "Coluna 5"
	KeyNumber6    = "Coluna 6"
	KeyWinners6   = "Ganhadores Faixa 1"
	KeyWinners5   = "Ganhadores Faixa 2"
	KeyWinners4   = "Ganhadores Faixa 3"
	KeyPrize6     = "Rateio Faixa 1"
	KeyPrize5     = "Rateio Faixa 2"
	KeyPrize4     = "Rateio Faixa 3"
	KeyCities     = "Cidade"
	KeyCollected  = "Valor Arrecadado"
	KeyNextPrize  = "Estimativa para o próximo concurso"
	KeyToNextDraw = "Valor Acumulado Próximo Concurso"
	KeyJackpot    = "Acumulado"
	KeySpecial    = "Sorteio Especial"
	KeyNote       = "Observação"
)

// Row is one parsed history-table row, keyed by source header label.
// Column order lives with the parsed table, not the row.
type Row map[string]string

// Flag holds a SIM/NAO column value mapped to 1/0. Valid is false when
// the source token was neither of the two, in which case the field is
// exported empty.
type Flag struct {
	Value int
	Valid bool
}

// String returns "1" or "0", or the empty string for an unset flag.
func (f Flag) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.Itoa(f.Value)
}

// Record is one fully normalized draw.
type Record struct {
	Number int

	// Host city/state where the draw took place.
	City  string
	State string

	// Date in year/month/day order, reversed from the source's
	// day/month/year.
	Date string

	// The six numbers in the order they were drawn.
	Numbers [6]int

	// Winner counts for the three prize tiers (6, 5 and 4 matches).
	Winners6 int
	Winners5 int
	Winners4 int

	// Prize amounts per winner for the same three tiers.
	Prize6 float64
	Prize5 float64
	Prize4 float64

	CollectedValue float64
	NextPrize      float64
	ToNextDraw     float64

	Jackpot     Flag
	SpecialDraw Flag

	Note string
}

// Location is one top-tier winner city/state pair. A draw has zero or
// more, present only when the draw had top-tier winners.
type Location struct {
	DrawNumber int
	City       string
	State      string
}
