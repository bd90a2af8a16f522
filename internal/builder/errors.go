package builder

import "errors"

// ErrAlreadyReserved is the panic value used when the same name is reserved
// twice on one Builder.
var ErrAlreadyReserved = errors.New("builder: name already reserved")
