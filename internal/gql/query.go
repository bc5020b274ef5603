package gql

// OrganisationsQuery fetches one page of organisations with the page cursors and the
// totals over the whole filtered result set.
const OrganisationsQuery = `
  query(
    $before: Cursor
    $after: Cursor
    $sort: OrganisationConnectionSort
    $filter: OrganisationConnectionFilter
  ) {
    organisations(
      before: $before,
      after: $after,
      sort: $sort,
      filter: $filter
    ) {
      nodes {
        id
        address
        ens
        kit
        createdAt
        aum
        activity
        score
        profile {
          name
          description
          icon
          links
        }
      }
      pageInfo {
        startCursor
        endCursor
        hasPreviousPage
        hasNextPage
      }
      totalCount
      totalAUM
      totalActivity
    }
  }
`
