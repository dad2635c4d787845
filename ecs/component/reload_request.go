package component

// ReloadRequest asks the reload system to rebuild a character. Spec re-reads
// the character prefab; a model-only request keeps the configuration.
type ReloadRequest struct {
	Spec bool
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
