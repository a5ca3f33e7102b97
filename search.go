package itsuku

import (
	"runtime"

	"github.com/NebulousLabs/errors"
	"github.com/NebulousLabs/fastrand"
	"github.com/NebulousLabs/threadgroup"
)

// searchHit is what a winning worker hands back to Search.
type searchHit struct {
	nonce  []byte
	result walkResult
}

// Search repeatedly draws a fresh 32-byte nonce and walks X until Omega
// has at least params.Difficulty trailing zero bits, per spec.md §4.6.
// workers goroutines race independently; the first to find a passing
// nonce wins, and its peers are cancelled before their next attempt
// (cancellation is coarse-grained, between nonce attempts, not
// mid-hash, per spec.md §5). If cancel fires first, Search returns
// ErrCancelled and no proof material.
//
// workers <= 0 defaults to GOMAXPROCS, matching the "thread pool sized
// to the hardware" guidance in spec.md §9.
func Search(params Params, challenge []byte, x [][]byte, psi []byte, workers int, cancel <-chan struct{}) (nonce []byte, result walkResult, err error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var tg threadgroup.ThreadGroup
	hits := make(chan searchHit, workers)
	failures := make(chan error, workers)

	for w := 0; w < workers; w++ {
		if tg.Add() != nil {
			break // group already stopping; no point starting more workers
		}
		go func() {
			defer tg.Done()
			src := arraySource(x)
			for {
				select {
				case <-tg.StopChan():
					return
				case <-cancel:
					return
				default:
				}

				n, err := drawNonce()
				if err != nil {
					failures <- err
					return
				}
				r, err := walk(params, challenge, src, psi, n)
				if err != nil {
					// A full array source should never fail to resolve a
					// cell; treat it as a reason to stop this worker.
					return
				}
				if trailingZeroBits(r.Omega, params.Difficulty) {
					select {
					case hits <- searchHit{nonce: n, result: r}:
					default:
					}
					return
				}
			}
		}()
	}

	select {
	case h := <-hits:
		tg.Stop()
		return h.nonce, h.result, nil
	case err := <-failures:
		tg.Stop()
		return nil, walkResult{}, err
	case <-cancel:
		tg.Stop()
		return nil, walkResult{}, ErrCancelled
	}
}

// drawNonce draws 32 bytes of cryptographic randomness for a search
// attempt, turning a fastrand panic (exhausted entropy source) into
// ErrEntropyFailure instead of crashing the process.
func drawNonce() (n []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, errors.Extend(ErrEntropyFailure, errors.New("fastrand panicked"))
		}
	}()
	return fastrand.Bytes(32), nil
}
