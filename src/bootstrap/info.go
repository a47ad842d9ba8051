package bootstrap

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/will-rowe/appshell/src/app"
	"github.com/will-rowe/appshell/src/version"
	msgpack "gopkg.in/vmihailenco/msgpack.v2"
)

// Info stores the outcome of a bootstrap run
type Info struct {
	Version   string   `msgpack:"version"`
	MountID   string   `msgpack:"mount_id"`
	Root      string   `msgpack:"root"`
	State     string   `msgpack:"state"`
	Bundles   []string `msgpack:"bundles"`
	Failures  []string `msgpack:"failures"`
	MountedAt int64    `msgpack:"mounted_at"`
}

// Report describes what Start did
func (Bootstrapper *Bootstrapper) Report() *Info {
	info := &Info{
		Version:  version.VERSION,
		MountID:  Bootstrapper.MountID,
		Root:     Bootstrapper.Root,
		State:    app.Unmounted.String(),
		Bundles:  append([]string(nil), Bootstrapper.registered...),
		Failures: append([]string(nil), Bootstrapper.failures...),
	}
	if Bootstrapper.app != nil {
		info.State = Bootstrapper.app.State().String()
		if t := Bootstrapper.app.MountedAt(); !t.IsZero() {
			info.MountedAt = t.UnixNano()
		}
	}
	return info
}

// Dump is a method to write the Info to file
func (Info *Info) Dump(path string) error {
	b, err := msgpack.Marshal(Info)
	if err != nil {
		return errors.Wrap(err, "could not encode bootstrap report")
	}
	return ioutil.WriteFile(path, b, 0644)
}

// Load is a method to load Info from file
func (Info *Info) Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	return Info.LoadFromBytes(data)
}

// LoadFromBytes is a method to load Info from a msgpack stream
func (Info *Info) LoadFromBytes(data []byte) error {
	if len(data) == 0 {
		return errors.New("bootstrap report appears empty")
	}
	return msgpack.Unmarshal(data, Info)
}
