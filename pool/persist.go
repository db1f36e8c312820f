package pool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/revelaction/cohmetrix/dep"
	sent "github.com/revelaction/cohmetrix/sentence"
	"github.com/revelaction/cohmetrix/storage"
	"github.com/revelaction/cohmetrix/tree"
)

// persisted wraps the computation of an expensive tool output: the output
// is read from the store if present, and written to it once computed.
// check validates a stored output against the text.
func persisted[T any](kind Kind, compute computeFunc, check func(context.Context, *Pool, *sent.Text, T) error) computeFunc {
	return func(ctx context.Context, p *Pool, t *sent.Text) (any, error) {
		if p.store == nil {
			return compute(ctx, p, t)
		}

		key := storage.Key{Version: t.Version(), Kind: string(kind)}

		data, err := p.store.Read(key)
		switch {
		case err == nil:
			var v T
			if err := json.Unmarshal(data, &v); err != nil {
				return nil, p.corrupt(key, err)
			}
			if err := check(ctx, p, t, v); err != nil {
				var re *ResourceError
				if errors.As(err, &re) {
					return nil, err
				}
				return nil, p.corrupt(key, err)
			}
			p.logger.Debug("stored resource", "kind", kind, "text", t.ID)
			return v, nil

		case errors.Is(err, storage.ErrNotFound):

		default:
			p.logger.Warn("reading stored resource", "kind", kind, "text", t.ID, "error", err)
		}

		v, err := compute(ctx, p, t)
		if err != nil {
			return nil, err
		}

		data, err = json.Marshal(v)
		if err == nil {
			err = p.store.Write(key, data)
		}
		if err != nil {
			p.logger.Warn("storing resource", "kind", kind, "text", t.ID, "error", err)
		}

		return v, nil
	}
}

// corrupt deletes the unreadable annotation under key.
func (p *Pool) corrupt(key storage.Key, cause error) error {
	p.logger.Warn("corrupt stored resource", "kind", key.Kind, "version", key.Version, "error", cause)

	if err := p.store.Delete(key); err != nil {
		p.logger.Warn("deleting corrupt resource", "kind", key.Kind, "version", key.Version, "error", err)
	}

	return fmt.Errorf("%w: %s: %v", ErrCacheCorruption, key.Kind, cause)
}

func checkTaggedSentences(ctx context.Context, p *Pool, t *sent.Text, tagged [][]sent.Token) error {
	tokens, err := p.Tokens(ctx, t)
	if err != nil {
		return err
	}
	return matchTagged(tokens, tagged)
}

func checkParseTrees(ctx context.Context, p *Pool, t *sent.Text, trees []*tree.Tree) error {
	tokens, err := p.Tokens(ctx, t)
	if err != nil {
		return err
	}

	if len(trees) != len(tokens) {
		return fmt.Errorf("%d trees for %d sentences", len(trees), len(tokens))
	}
	for i, tr := range trees {
		if tr == nil || tr.IsLeaf() {
			return fmt.Errorf("sentence %d: no tree", i)
		}
	}
	return nil
}

func checkDepTrees(ctx context.Context, p *Pool, t *sent.Text, graphs []*dep.Graph) error {
	tokens, err := p.Tokens(ctx, t)
	if err != nil {
		return err
	}

	if len(graphs) != len(tokens) {
		return fmt.Errorf("%d graphs for %d sentences", len(graphs), len(tokens))
	}
	for i, g := range graphs {
		if g == nil {
			return fmt.Errorf("sentence %d: no graph", i)
		}
	}
	return nil
}
