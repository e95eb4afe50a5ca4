package escapemg

import "math/bits"

// Bitboard is a set of squares stored in dense 0..63 bit order.
type Bitboard uint64

func toBitSquare(sq Square) uint { return uint(((sq &^ 7) >> 1) | (sq & 7)) }

func toX88Square(i int) Square { return Square(((i &^ 7) << 1) | (i & 7)) }

// Add sets the bit of sq.
func (b *Bitboard) Add(sq Square) { *b |= 1 << toBitSquare(sq) }

// Remove clears the bit of sq.
func (b *Bitboard) Remove(sq Square) { *b &^= 1 << toBitSquare(sq) }

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&(1<<toBitSquare(sq)) != 0 }

// Size returns the number of squares in the set.
func (b Bitboard) Size() int { return bits.OnesCount64(uint64(b)) }

// Next returns the lowest square of a non-empty set.
func (b Bitboard) Next() Square { return toX88Square(bits.TrailingZeros64(uint64(b))) }

// Remainder returns the set without its lowest square.
func (b Bitboard) Remainder() Bitboard { return b & (b - 1) }
