package tsf

import (
	"encoding/binary"
	"strings"

	"github.com/google/uuid"
)

// comGUID has the in-memory layout of a Windows GUID. uuid.UUID holds the
// same value in RFC 4122 byte order, so the first three fields swap.
type comGUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

func toCOM(u uuid.UUID) comGUID {
	g := comGUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:16])
	return g
}

func fromCOM(g comGUID) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return u
}

// FormatGUID renders u the way Windows tools do: braced and upper case.
func FormatGUID(u uuid.UUID) string {
	return "{" + strings.ToUpper(u.String()) + "}"
}
