package core

import (
	platformcore "github.com/vovakirdan/stonefall/internal/core"
)

// Wallet holds the coins collected by the player.
type Wallet struct {
	coins int

	// Changed is emitted with the new balance.
	Changed platformcore.Signal[int]
}

// NewWallet creates a wallet with a starting balance.
func NewWallet(coins int) *Wallet {
	return &Wallet{coins: max(coins, 0)}
}

// Coins returns the balance.
func (w *Wallet) Coins() int {
	return w.coins
}

// Add credits n coins. Non-positive amounts are ignored.
func (w *Wallet) Add(n int) {
	if n <= 0 {
		return
	}
	w.coins += n
	w.Changed.Emit(w.coins)
}

// Spend debits n coins if the balance allows it.
func (w *Wallet) Spend(n int) bool {
	if n < 0 || n > w.coins {
		return false
	}
	w.coins -= n
	w.Changed.Emit(w.coins)
	return true
}
