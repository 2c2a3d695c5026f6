package mutate

import (
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
)

// MessageOp is one field-level corruption kind. Unlike the line operations,
// exactly one MessageOp is applied per artifact, chosen uniformly at random.
type MessageOp int

const (
	OpRemoveKey MessageOp = iota
	OpAddKey
	OpReplaceKey

	messageOpCount
)

func (op MessageOp) String() string {
	switch op {
	case OpRemoveKey:
		return "remove-key"
	case OpAddKey:
		return "add-key"
	case OpReplaceKey:
		return "replace-key"
	default:
		return "unknown"
	}
}

// Mutation describes the single operation applied to one message artifact.
// Key is empty when the operation had no eligible target.
type Mutation struct {
	Op  MessageOp
	Key string
}

// CorruptMessage derives one corrupted copy of payload by applying exactly
// one uniformly chosen operation to a randomly chosen key. Remove and replace
// on an empty object are silent no-ops; add always succeeds.
func CorruptMessage(payload map[string]any, rng *rand.Rand) (map[string]any, Mutation) {
	out := clone(payload)
	op := MessageOp(rng.IntN(int(messageOpCount)))

	switch op {
	case OpRemoveKey:
		key, ok := pickKey(out, rng)
		if !ok {
			return out, Mutation{Op: op}
		}

		delete(out, key)

		return out, Mutation{Op: op, Key: key}

	case OpAddKey:
		key := randomKey(rng)
		out[key] = randomValue(rng)

		return out, Mutation{Op: op, Key: key}

	case OpReplaceKey:
		key, ok := pickKey(out, rng)
		if !ok {
			return out, Mutation{Op: op}
		}

		out[key] = randomValue(rng)

		return out, Mutation{Op: op, Key: key}
	}

	return out, Mutation{Op: op}
}

// pickKey selects a key uniformly. Keys are sorted first so a seeded
// generator yields a stable choice regardless of map iteration order.
func pickKey(m map[string]any, rng *rand.Rand) (string, bool) {
	if len(m) == 0 {
		return "", false
	}

	keys := slices.Sorted(maps.Keys(m))

	return keys[rng.IntN(len(keys))], true
}

// Ranges for the modifiable message attributes.
const (
	MinOrgID = 0
	MaxOrgID = 100_000_000

	MinAccountNumber = 0
	MaxAccountNumber = 100_000_000
)

// Modifications selects which attributes ModifyMessage replaces.
type Modifications struct {
	OrgID         bool
	AccountNumber bool
	ClusterID     bool
}

// ModifyMessage returns a fresh copy of payload with the enabled attributes
// replaced by new random values. The copy keeps every other field, so the
// output stays a well-formed message.
func ModifyMessage(payload map[string]any, mods Modifications, rng *rand.Rand) map[string]any {
	out := clone(payload)

	if mods.OrgID {
		out["OrgID"] = MinOrgID + rng.IntN(MaxOrgID-MinOrgID+1)
	}

	if mods.AccountNumber {
		out["AccountNumber"] = MinAccountNumber + rng.IntN(MaxAccountNumber-MinAccountNumber+1)
	}

	if mods.ClusterID {
		out["ClusterName"] = uuid.New().String()
	}

	return out
}

func clone(payload map[string]any) map[string]any {
	if payload == nil {
		return map[string]any{}
	}

	return maps.Clone(payload)
}
