package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"rabbitmq-collector/internal/client/management"
	"rabbitmq-collector/internal/model"
)

// processNode emits every node stat, or nothing at all if any of them is
// missing or not a number.
func (c *cycle) processNode(raw any) {
	obj, ok := model.AsObject(raw)
	if !ok {
		c.fail("node", "", management.NodesPath(), fmt.Errorf("node entry is %T, not an object", raw))
		return
	}
	name, _ := obj.Name()

	values := make([]float64, model.NodeStats.Len())
	for i, field := range model.NodeStats.Fields {
		v, err := obj.Number(field)
		if err != nil {
			c.fail("node", name, management.NodesPath(), err)
			return
		}
		values[i] = v
	}

	for i, field := range model.NodeStats.Fields {
		c.emit(values[i], field)
	}
	c.count(&c.result.Nodes)
}

// processVHost collects the queues and then the exchanges of one vhost.
func (c *cycle) processVHost(ctx context.Context, vhost string) {
	token := c.namer.Sanitize(vhost)
	c.count(&c.result.VHosts)

	var g errgroup.Group
	c.spawn(&g, func() { c.processQueues(ctx, vhost, token) })
	c.spawn(&g, func() { c.processExchanges(ctx, vhost, token) })
	g.Wait()
}

func (c *cycle) processQueues(ctx context.Context, vhost, token string) {
	path := management.QueuesPath(vhost)
	queues, err := c.fetchList(ctx, path)
	if err != nil {
		c.fail("vhost", vhost, path, err)
		return
	}

	var g errgroup.Group
	for _, raw := range queues {
		name, ok := entryName(raw)
		if !ok {
			c.logger.Debug().Str("vhost", vhost).Msg("skipping queue entry without a name")
			continue
		}
		c.spawn(&g, func() {
			detailPath := management.QueuePath(vhost, name)
			doc, err := c.fetch(ctx, detailPath)
			if err != nil {
				c.fail("queue", name, detailPath, err)
				return
			}
			if doc == nil {
				c.logger.Debug().Str("vhost", vhost).Str("queue", name).Msg("queue detail is null, skipping")
				return
			}
			queue, ok := model.AsObject(doc)
			if !ok {
				c.fail("queue", name, detailPath, fmt.Errorf("queue detail is %T, not an object", doc))
				return
			}
			c.processQueue(token, name, queue)
		})
	}
	g.Wait()
}

// processQueue emits the scalar stats, the message counts with their
// details blocks, and the message_stats block of one queue.
func (c *cycle) processQueue(token, name string, queue model.Object) {
	instance := model.SanitizeComponent(name)

	for _, field := range model.QueueStats.Fields {
		c.emitIfNumeric(queue, field, token, model.CategoryQueues, instance, field)
	}

	for _, field := range model.QueueMessageStats.Fields {
		// "messages" is in both vocabularies; emit it once.
		if !model.QueueStats.Contains(field) {
			c.emitIfNumeric(queue, field, token, model.CategoryQueues, instance, field)
		}

		details, ok := queue.Child(model.DetailsKey(field))
		if !ok {
			continue
		}
		for _, detail := range model.DetailStats.Fields {
			c.emitIfNumeric(details, detail, token, model.CategoryQueues, instance, field, detail)
		}
	}

	if stats, ok := queue.Child("message_stats"); ok {
		c.processMessageStats(stats, token, model.CategoryQueues, instance)
	}
	c.count(&c.result.Queues)
}

func (c *cycle) processExchanges(ctx context.Context, vhost, token string) {
	path := management.ExchangesPath(vhost)
	exchanges, err := c.fetchList(ctx, path)
	if err != nil {
		c.fail("vhost", vhost, path, err)
		return
	}

	var g errgroup.Group
	for _, raw := range exchanges {
		name, ok := entryName(raw)
		if !ok || name == "" {
			// The default exchange has an empty name and no address of its own.
			continue
		}
		c.spawn(&g, func() {
			detailPath := management.ExchangePath(vhost, name)
			doc, err := c.fetch(ctx, detailPath)
			if err != nil {
				c.fail("exchange", name, detailPath, err)
				return
			}
			if doc == nil {
				return
			}
			exchange, ok := model.AsObject(doc)
			if !ok {
				c.fail("exchange", name, detailPath, fmt.Errorf("exchange detail is %T, not an object", doc))
				return
			}
			if stats, ok := exchange.Child("message_stats"); ok {
				c.processMessageStats(stats, token, model.CategoryExchanges, model.SanitizeComponent(name))
			}
			c.count(&c.result.Exchanges)
		})
	}
	g.Wait()
}

// processMessageStats emits each known counter present in a message_stats block.
func (c *cycle) processMessageStats(stats model.Object, token, category, instance string) {
	for _, counter := range model.MessageStats.Fields {
		c.emitIfNumeric(stats, counter, token, category, instance, counter)
	}
}

// emitIfNumeric emits obj[key] under the name built from parts. Absent or
// non-numeric values are skipped.
func (c *cycle) emitIfNumeric(obj model.Object, key string, parts ...string) {
	raw, ok := obj[key]
	if !ok {
		return
	}
	v, ok := model.ToFloat(raw)
	if !ok {
		return
	}
	c.emit(v, parts...)
}

// entryName returns the name of a list entry.
func entryName(raw any) (string, bool) {
	obj, ok := model.AsObject(raw)
	if !ok {
		return "", false
	}
	return obj.Name()
}
