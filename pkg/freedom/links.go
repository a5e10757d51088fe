package freedom

import (
	"context"
	"errors"
)

// Link resolution follows a relation of a fetched resource through any API.
// The backend used for the follow-up call is the one passed in, regardless
// of which backend produced the resource:
//
//	req, _ := direct.TaskRequests().Get(ctx, 42)
//	site, _ := req.Ref().ResolveSite(ctx, cached)

// Getter fetches one resource by id. Every resource client implements it.
type Getter[T any] interface {
	Get(ctx context.Context, id int) (Container[T], error)
}

type linkGetter[T any] interface {
	Getter[T]
	GetHref(ctx context.Context, href string) (Container[T], error)
}

type linkedLister[T any] interface {
	ListLinked(ctx context.Context, href string) Seq[T]
}

// resolve fetches rel by id when its href is canonical, and follows the href
// itself otherwise.
func resolve[T any](ctx context.Context, r *Resource, rel string, kind Kind, client linkGetter[T]) (Container[T], error) {
	id, err := r.LinkID(rel, kind)
	if err == nil {
		return client.Get(ctx, id)
	}

	if !errors.Is(err, ErrInvalidID) {
		return Container[T]{}, err
	}

	href, err := r.Href(rel)
	if err != nil {
		return Container[T]{}, err
	}

	return client.GetHref(ctx, href)
}

func resolveAll[T any](ctx context.Context, r *Resource, rel string, client linkedLister[T]) Seq[T] {
	href, err := r.Href(rel)
	if err != nil {
		return ErrSeq[T](err)
	}

	return client.ListLinked(ctx, href)
}

// ResolveSite fetches the site the request targets.
func (r *TaskRequest) ResolveSite(ctx context.Context, api API) (Container[Site], error) {
	return resolve(ctx, &r.Resource, "site", KindSite, api.Sites())
}

// ResolveSiteConfiguration fetches the site configuration the request targets.
func (r *TaskRequest) ResolveSiteConfiguration(ctx context.Context, api API) (Container[SiteConfiguration], error) {
	return resolve(ctx, &r.Resource, "configuration", KindSiteConfiguration, api.SiteConfigurations())
}

// ResolveSatellite fetches the satellite the request is for.
func (r *TaskRequest) ResolveSatellite(ctx context.Context, api API) (Container[Satellite], error) {
	return resolve(ctx, &r.Resource, "satellite", KindSatellite, api.Satellites())
}

// ResolveUser fetches the user who submitted the request.
func (r *TaskRequest) ResolveUser(ctx context.Context, api API) (Container[User], error) {
	return resolve(ctx, &r.Resource, "user", KindUser, api.Users())
}

// ResolveTask fetches the task scheduled for the request.
func (r *TaskRequest) ResolveTask(ctx context.Context, api API) (Container[Task], error) {
	return resolve(ctx, &r.Resource, "task", KindTask, api.Tasks())
}

// ResolveTargetBands lists the bands the request targets.
func (r *TaskRequest) ResolveTargetBands(ctx context.Context, api API) Seq[Band] {
	return resolveAll(ctx, &r.Resource, "targetBands", api.Bands())
}

// ResolveTaskRequest fetches the request the task was scheduled from.
func (t *Task) ResolveTaskRequest(ctx context.Context, api API) (Container[TaskRequest], error) {
	return resolve(ctx, &t.Resource, "taskRequest", KindTaskRequest, api.TaskRequests())
}

// ResolveSiteConfiguration fetches the site configuration the task runs on.
func (t *Task) ResolveSiteConfiguration(ctx context.Context, api API) (Container[SiteConfiguration], error) {
	return resolve(ctx, &t.Resource, "config", KindSiteConfiguration, api.SiteConfigurations())
}

// ResolveAzEl fetches the task's pointing track.
func (t *Task) ResolveAzEl(ctx context.Context, api API) (*AzEl, error) {
	href, err := t.Href("azel")
	if err != nil {
		return nil, err
	}

	return api.Tasks().GetAzEl(ctx, href)
}

// ResolveConfiguration fetches the satellite's configuration.
func (s *Satellite) ResolveConfiguration(ctx context.Context, api API) (Container[SatelliteConfiguration], error) {
	return resolve(ctx, &s.Resource, "configuration", KindSatelliteConfiguration, api.SatelliteConfigurations())
}

// ResolveAccount fetches the account owning the satellite.
func (s *Satellite) ResolveAccount(ctx context.Context, api API) (Container[Account], error) {
	return resolve(ctx, &s.Resource, "account", KindAccount, api.Accounts())
}

// ResolveSite fetches the site the configuration belongs to.
func (s *SiteConfiguration) ResolveSite(ctx context.Context, api API) (Container[Site], error) {
	return resolve(ctx, &s.Resource, "site", KindSite, api.Sites())
}

// ResolveConfigurations lists the site's configurations.
func (s *Site) ResolveConfigurations(ctx context.Context, api API) Seq[SiteConfiguration] {
	return resolveAll(ctx, &s.Resource, "configurations", api.SiteConfigurations())
}

// ResolveAccount fetches the user's account.
func (u *User) ResolveAccount(ctx context.Context, api API) (Container[Account], error) {
	return resolve(ctx, &u.Resource, "account", KindAccount, api.Accounts())
}

// ResolveAccount fetches the account owning the band.
func (b *Band) ResolveAccount(ctx context.Context, api API) (Container[Account], error) {
	return resolve(ctx, &b.Resource, "account", KindAccount, api.Accounts())
}

// ResolveUsers lists the account's users.
func (a *Account) ResolveUsers(ctx context.Context, api API) Seq[User] {
	return resolveAll(ctx, &a.Resource, "users", api.Users())
}

// ResolveSatellites lists the account's satellites.
func (a *Account) ResolveSatellites(ctx context.Context, api API) Seq[Satellite] {
	return resolveAll(ctx, &a.Resource, "satellites", api.Satellites())
}
