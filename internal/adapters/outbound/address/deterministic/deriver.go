package deterministic

import (
	"encoding/hex"

	portsout "sweepvault/internal/application/ports/out"
	valueobjects "sweepvault/internal/domain/value_objects"

	"golang.org/x/crypto/sha3"
)

// Deriver computes account addresses as the last 20 bytes of
// keccak256(0xff || registryID || salt || keccak256(templateID)). The
// construction commits every address to the registry and template
// identities, so two registries never collide on the same salt.
type Deriver struct {
	registryID   valueobjects.Address
	templateHash []byte
}

var _ portsout.AddressDeriver = (*Deriver)(nil)

func NewDeriver(registryID, templateID valueobjects.Address) *Deriver {
	return &Deriver{
		registryID:   registryID,
		templateHash: keccak256(templateID.Bytes()),
	}
}

func (d *Deriver) Derive(salt valueobjects.Salt) valueobjects.Address {
	preimage := make([]byte, 0, 1+20+32+32)
	preimage = append(preimage, 0xff)
	preimage = append(preimage, d.registryID.Bytes()...)
	preimage = append(preimage, salt.Bytes()...)
	preimage = append(preimage, d.templateHash...)

	digest := keccak256(preimage)

	return valueobjects.Address("0x" + hex.EncodeToString(digest[12:]))
}

func keccak256(data []byte) []byte {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)

	return hasher.Sum(nil)
}
