package aptos

import (
	"errors"
	"math"

	sdk "github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/api"
	"github.com/rs/zerolog/log"
)

// Fixed worst-case ceilings are either wasteful or too small for accounts
// that are being created for the first time, so every transaction is
// simulated first and committed with a margin over the observed cost.
const (
	// Nominal ceiling used only for the simulation pass.
	simulationMaxGas = uint64(1000)

	gasSafetyFactor = 1.2
)

// GasPlan is the output of a successful simulation: the gas ceiling the
// real transaction will be committed with.
type GasPlan struct {
	MaxGasAmount uint64
}

func planForGasUsed(gasUsed uint64) GasPlan {
	return GasPlan{
		MaxGasAmount: uint64(math.Ceil(float64(gasUsed) * gasSafetyFactor)),
	}
}

// planFromSimulation validates the simulated execution and derives the
// commit ceiling from its observed gas cost.
func planFromSimulation(sim *api.UserTransaction) (GasPlan, error) {
	if !sim.Success {
		return GasPlan{}, &SimulationError{VmStatus: sim.VmStatus}
	}
	return planForGasUsed(sim.GasUsed), nil
}

// EstimateGas dry-runs the payload against current account state and turns
// the observed gas cost into a commit ceiling. Nothing is broadcast.
func (n *Node) EstimateGas(account *sdk.Account, payload sdk.TransactionPayload) (GasPlan, error) {
	rawTxn, err := n.client.BuildTransaction(account.Address, payload, sdk.MaxGasAmount(simulationMaxGas))
	if err != nil {
		return GasPlan{}, &SimulationError{Err: err}
	}
	sims, err := n.client.SimulateTransaction(rawTxn, account)
	if err != nil {
		return GasPlan{}, &SimulationError{Err: err}
	}
	if len(sims) == 0 {
		return GasPlan{}, &SimulationError{Err: errors.New("node returned no simulation result")}
	}
	plan, err := planFromSimulation(sims[0])
	if err != nil {
		return GasPlan{}, err
	}
	log.Debug().Msgf("aptos simulation used %d gas units, committing with ceiling %d", sims[0].GasUsed, plan.MaxGasAmount)
	return plan, nil
}

// SubmitWithPlan rebuilds the transaction with the plan's ceiling, signs
// it and broadcasts it, returning the transaction hash.
func (n *Node) SubmitWithPlan(account *sdk.Account, payload sdk.TransactionPayload, plan GasPlan) (string, error) {
	rawTxn, err := n.client.BuildTransaction(account.Address, payload, sdk.MaxGasAmount(plan.MaxGasAmount))
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	signedTxn, err := rawTxn.SignedTransaction(account)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	res, err := n.client.SubmitTransaction(signedTxn)
	if err != nil {
		return "", &SubmissionError{Err: err}
	}
	return res.Hash, nil
}

// SendTransaction runs the full simulate-then-commit flow for a payload.
func (n *Node) SendTransaction(account *sdk.Account, payload sdk.TransactionPayload) (string, error) {
	plan, err := n.EstimateGas(account, payload)
	if err != nil {
		return "", err
	}
	return n.SubmitWithPlan(account, payload, plan)
}
