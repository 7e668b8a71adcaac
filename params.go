package dbx

import (
	"time"

	"github.com/rizesql/dbx/driver"
)

// Typed parameter constructors. These build the structured binding form;
// type hints travel to the adapter, which decides what to do with them.
// Unknown or mismatched types are not validated here — coercion failures
// surface as driver errors at execution time.

func Int(name string, v int64) driver.Param {
	return driver.Param{Name: name, Value: v, Type: driver.TypeInt}
}

func Float(name string, v float64) driver.Param {
	return driver.Param{Name: name, Value: v, Type: driver.TypeFloat}
}

func Text(name string, v string) driver.Param {
	return driver.Param{Name: name, Value: v, Type: driver.TypeText}
}

func Blob(name string, v []byte) driver.Param {
	return driver.Param{Name: name, Value: v, Type: driver.TypeBlob}
}

func Bool(name string, v bool) driver.Param {
	return driver.Param{Name: name, Value: v, Type: driver.TypeBool}
}

func Time(name string, v time.Time) driver.Param {
	return driver.Param{Name: name, Value: v, Type: driver.TypeTime}
}

func Null(name string) driver.Param {
	return driver.Param{Name: name, Type: driver.TypeNull}
}

// Raw builds an untyped name/value binding passed through to the driver
// as-is.
func Raw(name string, v any) driver.RawParam {
	return driver.RawParam{Name: name, Value: v}
}
