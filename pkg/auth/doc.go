// Package auth implements credential verification and account
// resolution: login against a lookup-by-username store, signup with
// bcrypt password hashing, and user-info resolution for authenticated
// requests.
//
// The service enforces two security properties deliberately:
//
//   - Uniform login failure. Unknown username, deactivated account,
//     wrong password, and store failure all return
//     ErrInvalidCredentials. The real cause appears only in internal
//     logs. A dummy bcrypt comparison runs on the unresolvable-username
//     path so timing does not betray account existence either.
//
//   - Activation gate at resolution. A record with Activated false fails
//     in the same place, and the same way, as a record that does not
//     exist — there is no code path that attaches a non-activated
//     identity to a request.
//
// Storage access is timeout-bounded; a slow or failing store surfaces as
// a login failure, never as a partially authenticated state.
package auth
