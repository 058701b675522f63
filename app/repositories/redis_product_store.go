package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/stockroom/app/models"
)

// RedisProductStore keeps each product in a hash at <prefix>:product:<id>.
// A sorted set scored by id keeps insertion order and INCR on a sequence key
// hands out ids, so ids survive deletions without being reused.
type RedisProductStore struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisProductStore uses prefix to namespace every key; an empty prefix
// means "stockroom".
func NewRedisProductStore(rdb *redis.Client, prefix string) *RedisProductStore {
	if prefix == "" {
		prefix = "stockroom"
	}
	return &RedisProductStore{rdb: rdb, prefix: prefix, now: time.Now}
}

func (s *RedisProductStore) seqKey() string   { return s.prefix + ":products:seq" }
func (s *RedisProductStore) indexKey() string { return s.prefix + ":products" }
func (s *RedisProductStore) productKey(id uint) string {
	return s.prefix + ":product:" + strconv.FormatUint(uint64(id), 10)
}

func (s *RedisProductStore) Create(ctx context.Context, name string, price float64, stockQuantity int) (models.Product, error) {
	p := models.NewProduct(name, price, stockQuantity)
	if err := p.Validate(); err != nil {
		return models.Product{}, err
	}

	id, err := s.rdb.Incr(ctx, s.seqKey()).Result()
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: next product id: %w", err)
	}
	p.ID = uint(id)
	p.CreatedAt = s.now().UTC()
	p.UpdatedAt = p.CreatedAt

	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.productKey(p.ID), toHash(p))
		pipe.ZAdd(ctx, s.indexKey(), redis.Z{Score: float64(p.ID), Member: p.ID})
		return nil
	})
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: create product: %w", err)
	}
	return p, nil
}

func (s *RedisProductStore) Get(ctx context.Context, id uint) (models.Product, error) {
	return s.load(ctx, s.rdb, id)
}

// hashReader is satisfied by both *redis.Client and the *redis.Tx of a WATCH.
type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func (s *RedisProductStore) load(ctx context.Context, c hashReader, id uint) (models.Product, error) {
	h, err := c.HGetAll(ctx, s.productKey(id)).Result()
	if err != nil {
		return models.Product{}, fmt.Errorf("repositories: get product %d: %w", id, err)
	}
	if len(h) == 0 {
		return models.Product{}, models.NotFound(id)
	}
	return fromHash(id, h)
}

func (s *RedisProductStore) List(ctx context.Context) ([]models.Product, error) {
	members, err := s.rdb.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}

	ids := make([]uint, len(members))
	cmds := make([]*redis.MapStringStringCmd, len(members))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, m := range members {
			n, err := strconv.ParseUint(m, 10, 64)
			if err != nil {
				return fmt.Errorf("bad index member %q: %w", m, err)
			}
			ids[i] = uint(n)
			cmds[i] = pipe.HGetAll(ctx, s.productKey(ids[i]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("repositories: list products: %w", err)
	}

	products := make([]models.Product, 0, len(members))
	for i, cmd := range cmds {
		h := cmd.Val()
		if len(h) == 0 {
			continue
		}
		p, err := fromHash(ids[i], h)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (s *RedisProductStore) Update(ctx context.Context, id uint, u models.ProductUpdate) (models.Product, error) {
	if err := u.Validate(); err != nil {
		return models.Product{}, err
	}

	var out models.Product
	key := s.productKey(id)
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		p, err := s.load(ctx, tx, id)
		if err != nil {
			return err
		}
		p = u.Apply(p)
		p.UpdatedAt = s.now().UTC()

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, toHash(p))
			return nil
		})
		out = p
		return err
	}, key)
	if err != nil {
		return models.Product{}, wrapTx("update", id, err)
	}
	return out, nil
}

func (s *RedisProductStore) Delete(ctx context.Context, id uint) error {
	var del *redis.IntCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.productKey(id))
		pipe.ZRem(ctx, s.indexKey(), id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("repositories: delete product %d: %w", id, err)
	}
	if del.Val() == 0 {
		return models.NotFound(id)
	}
	return nil
}

func (s *RedisProductStore) SetStock(ctx context.Context, id uint, quantity int) error {
	if err := checkStock(quantity); err != nil {
		return err
	}

	key := s.productKey(id)
	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return models.NotFound(id)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				"stock_quantity", quantity,
				"updated_at", s.now().UTC().Format(time.RFC3339Nano),
			)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return wrapTx("set stock", id, err)
	}
	return nil
}

func wrapTx(op string, id uint, err error) error {
	var verr *models.ValidationError
	if errors.Is(err, models.ErrNotFound) || errors.As(err, &verr) {
		return err
	}
	return fmt.Errorf("repositories: %s %d: %w", op, id, err)
}

func toHash(p models.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":           p.Name,
		"price":          strconv.FormatFloat(p.Price, 'f', -1, 64),
		"stock_quantity": p.StockQuantity,
		"created_at":     p.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":     p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func fromHash(id uint, h map[string]string) (models.Product, error) {
	p := models.Product{ID: id, Name: h["name"]}

	var err error
	if p.Price, err = strconv.ParseFloat(h["price"], 64); err != nil {
		return models.Product{}, fmt.Errorf("repositories: product %d: bad price %q: %w", id, h["price"], err)
	}
	if p.StockQuantity, err = strconv.Atoi(h["stock_quantity"]); err != nil {
		return models.Product{}, fmt.Errorf("repositories: product %d: bad stock_quantity %q: %w", id, h["stock_quantity"], err)
	}
	// Timestamps are informational; tolerate hashes written without them.
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, h["created_at"])
	p.UpdatedAt, _ = time.Parse(time.RFC3339Nano, h["updated_at"])
	return p, nil
}
