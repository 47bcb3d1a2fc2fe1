package transaction

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github/chapool/go-txcore/chainerrors"
)

// ChainContext supplies chain state for completing a transaction whose
// caller did not set every field. It is satisfied by go-ethereum's
// ethclient.Client.
type ChainContext interface {
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
}

// Fill populates the unset nonce, gas price and chain id of tx from the
// chain context. A field that is neither set nor obtainable fails with a
// CodeMissingField error naming it; set fields are left untouched.
func Fill(ctx context.Context, tx Transaction, chain ChainContext) error {
	if tx.Nonce() == nil {
		if chain == nil {
			return chainerrors.MissingField("nonce")
		}
		if tx.From() == nil {
			return chainerrors.MissingField("from")
		}
		nonce, err := chain.PendingNonceAt(ctx, *tx.From())
		if err != nil {
			return errors.Wrap(err, "failed to fetch pending nonce")
		}
		tx.setNonceBig(new(big.Int).SetUint64(nonce))
		log.Debug().
			Stringer("txType", tx.Type()).
			Uint64("nonce", nonce).
			Msg("filled nonce from chain context")
	}

	if tx.ChainID() == nil {
		if chain == nil {
			return chainerrors.MissingField("chainId")
		}
		chainID, err := chain.ChainID(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to fetch chain id")
		}
		tx.setChainIDBig(chainID)
		log.Debug().
			Stringer("txType", tx.Type()).
			Stringer("chainId", chainID).
			Msg("filled chain id from chain context")
	}

	if tx.GasPrice() == nil {
		if chain == nil {
			return chainerrors.MissingField("gasPrice")
		}
		gasPrice, err := chain.SuggestGasPrice(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to fetch suggested gas price")
		}
		tx.setGasPriceBig(gasPrice)
		log.Debug().
			Stringer("txType", tx.Type()).
			Stringer("gasPrice", gasPrice).
			Msg("filled gas price from chain context")
	}

	return nil
}
