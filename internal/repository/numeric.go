package repository

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
)

// Reward amounts live in NUMERIC(39,0) columns, wide enough for a signed
// 128-bit value. These helpers convert between pgtype.Numeric and big.Int.

func numericFromBig(v *big.Int) pgtype.Numeric {
	if v == nil {
		v = big.NewInt(0)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Valid: true}
}

func bigFromNumeric(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid {
		return nil, errors.New("numeric is null")
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, errors.New("numeric is not a finite value")
	}

	v := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		v.Mul(v, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	case n.Exp < 0:
		return nil, fmt.Errorf("numeric has unexpected fractional part (exp %d)", n.Exp)
	}
	return v, nil
}
