//go:build !windows

package credentials

// ReadFromStore reports that no system credential store is supported on this
// platform. The owning components fall back to their configuration.
func (this *Credentials) ReadFromStore() (supported bool, err error) {
	return false, nil
}

func (this *Credentials) WriteToStore() (supported bool, err error) {
	return false, nil
}
