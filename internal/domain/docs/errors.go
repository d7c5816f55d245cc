package docs

import "errors"

// ErrNoObjectStore indicates the service was built without a storage client configured.
var ErrNoObjectStore = errors.New("no object storage client configured")
