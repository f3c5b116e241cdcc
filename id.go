package ledger

import "github.com/reelgate/ledger/id"

// ID is the identifier type for generated ledger entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
