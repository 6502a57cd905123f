package reservation

import (
	"fmt"
	"sync"
)

// entityLocker serializa las operaciones del flujo por cliente y por producto.
// La secuencia leer-verificar-mutar de Create/Cancel solo es correcta si dos
// invocaciones nunca se intercalan sobre el mismo cliente o producto, así que
// en un proceso concurrente la exclusión mutua por entidad es obligatoria.
//
// Los mutex se crean bajo demanda y no se liberan: el mapa queda acotado por
// la cantidad de entidades vistas por el proceso.
type entityLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newEntityLocker() *entityLocker {
	return &entityLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *entityLocker) get(key string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

// lockPair toma los locks del cliente y del producto, siempre en ese orden.
// El orden fijo cliente->producto hace el ordenamiento total y evita deadlocks
// entre invocaciones cruzadas.
func (l *entityLocker) lockPair(clientID, productID int64) func() {
	cm := l.get(fmt.Sprintf("client:%d", clientID))
	pm := l.get(fmt.Sprintf("product:%d", productID))
	cm.Lock()
	pm.Lock()
	return func() {
		pm.Unlock()
		cm.Unlock()
	}
}
