package shared

import (
	"math"
	"math/big"
	mathrand "math/rand"
	"strconv"

	"github.com/ethereum/go-ethereum/params"
)

// RandomAmount picks a uniform value in [min, max] rounded to the given
// number of decimal places.
func RandomAmount(min, max float64, decimals int) float64 {
	v := min + mathrand.Float64()*(max-min)
	pow := math.Pow10(decimals)
	return math.Round(v*pow) / pow
}

// EthToWei converts an ether amount to wei. The float goes through its
// shortest decimal representation so 0.05 ETH becomes exactly 5e16 wei
// instead of picking up binary representation error.
func EthToWei(eth float64) *big.Int {
	r, _ := new(big.Rat).SetString(strconv.FormatFloat(eth, 'f', -1, 64))
	r.Mul(r, new(big.Rat).SetInt64(params.Ether))
	return new(big.Int).Quo(r.Num(), r.Denom())
}

// WeiToEthString renders a wei amount as a decimal ether string for logs.
func WeiToEthString(wei *big.Int) string {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, new(big.Float).SetInt64(params.Ether))
	return f.Text('f', 6)
}

// OctasToAPT converts the smallest Aptos denomination to whole APT.
func OctasToAPT(octas uint64) float64 {
	return float64(octas) / 1e8
}
