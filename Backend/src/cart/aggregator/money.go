package aggregator

import (
	"fmt"
	"math"
)

// Money guarda importes en centavos para que los totales no acumulen error de float.
type Money struct{ Cents int64 }

func (m Money) Add(o Money) Money  { return Money{Cents: m.Cents + o.Cents} }
func (m Money) Mul(qty int32) Money { return Money{Cents: m.Cents * int64(qty)} }

// FromFloat convierte un precio decimal (79.9) a centavos, redondeando a 2 decimales.
func FromFloat(v float64) Money { return Money{Cents: int64(math.Round(v * 100))} }

func (m Money) Float() float64 { return float64(m.Cents) / 100 }

func (m Money) String() string {
	c := m.Cents
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
