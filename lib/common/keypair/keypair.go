//
// Encapsulate Stellar's keypair package
//
// Council addresses are stellar account addresses ("G...").
//
package keypair

import (
	stellar "github.com/stellar/go/keypair"
)

// Aliases to stellar types
type Full = stellar.Full
type KP = stellar.KP
type FromAddress = stellar.FromAddress

// Aliases to stellar functions
var Parse = stellar.Parse
var RandomCanFail = stellar.Random
